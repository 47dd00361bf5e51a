package mason

import (
	"fmt"
	"io"
	"net/http"

	"github.com/tkemppa/exertrack/pkg/rest"
)

// SchemaHandler serves the JSON schema documents the control schemaUrls
// advertise, resolving the "/schema/:name/" route to the name.json file
// under root.
func SchemaHandler(root http.FileSystem) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var name = rest.GetParam(request, "name")

		file, err := root.Open(name + ".json")
		if err != nil {
			NotFound(writer, "Unknown schema", fmt.Sprintf("There is no schema named %s", name))
			return
		}
		defer func() { _ = file.Close() }()

		writer.Header().Set("Content-Type", JSONMediaType)
		_, _ = io.Copy(writer, file)
	}
}
