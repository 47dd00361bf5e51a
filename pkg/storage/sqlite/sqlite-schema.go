package sqlite

const schema = `
BEGIN TRANSACTION;

CREATE TABLE
	IF NOT EXISTS users (
		user_id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE,
		password TEXT,
		avatar BLOB,
		description TEXT,
		visibility INTEGER,
		UNIQUE (user_id, username)
	);

CREATE TABLE
	IF NOT EXISTS exercise (
		exercise_id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		username TEXT,
		type TEXT,
		value INTEGER,
		valueunit TEXT,
		date TEXT,
		time INTEGER,
		timeunit TEXT,
		FOREIGN KEY (user_id, username) REFERENCES users (user_id, username) ON DELETE SET NULL
	);

CREATE TABLE
	IF NOT EXISTS friends (
		user_id INTEGER,
		friend_id INTEGER,
		PRIMARY KEY (user_id, friend_id),
		FOREIGN KEY (user_id) REFERENCES users (user_id) ON DELETE CASCADE,
		FOREIGN KEY (friend_id) REFERENCES users (user_id) ON DELETE CASCADE
	);

COMMIT;
`
