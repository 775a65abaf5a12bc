// Package api embeds the OpenAPI document served by the HTTP server.
package api

import _ "embed"

// SwaggerJSON is the Swagger 2.0 description of the users API.
//
//go:embed swagger/users.swagger.json
var SwaggerJSON []byte
