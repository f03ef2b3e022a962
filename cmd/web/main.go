// @title           GymDesk API
// @version         1.0
// @description     Multi-tenant gym management API (Swagger documentation).
// @contact.name    GymDesk
// @contact.email   support@gymdesk.app
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"gymdesk_backend/internal/app"

	_ "gymdesk_backend/docs"
)

func main() {
	app.Run()
}
