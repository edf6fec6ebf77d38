// filepath: cmd/kpihub/main.go
package main

import (
	"kpihub/internal/cli"

	// Import docs for Swagger
	_ "kpihub/docs"
)

// @title KPIHub-API
// @version 1.0.0
// @description REST API for administering users and KPI assessment templates.
// @BasePath /api
// @schemes http
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT token.

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
