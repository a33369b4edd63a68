// Package docs Schedule Microservice API.
//
// Travel schedule service: creates road-trip schedules, predicts where the
// traveler will be at each meal/snack slot along the route, and attaches
// nearby restaurants to every slot.
//
// Main capabilities:
// - Schedule creation and update with meal time slots and waypoints
// - Route-based temporal location resolution (Tmap route prediction)
// - Restaurant search around calculated slot locations (Kakao local API)
// - Waypoint and destination arrival time estimation
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": ["http", "https"],
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Schedule Microservice API",
	Description:      "Travel schedule service with route-based meal location resolution.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
