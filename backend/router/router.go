package router

import (
	"net/http"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/controllers"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/middleware"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/models"
)

// New assembles the route table. Three authorization classes: public (login),
// operator token (upload/list/delete, role-checked), device shared secret
// (download/buildDetails).
func New(authCtrl *controllers.AuthController, buildCtrl *controllers.BuildController, deviceCtrl *controllers.DeviceController, auth *middleware.Auth, gate *middleware.DeviceGate) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("POST /login", authCtrl.Login)

	// operator endpoints
	mux.Handle("POST /upload", auth.RequireRole(http.HandlerFunc(buildCtrl.Upload), models.RoleAdmin))
	mux.Handle("GET /builds", auth.RequireRole(http.HandlerFunc(buildCtrl.List), models.RoleAdmin, models.RoleViewer))
	mux.Handle("DELETE /builds/{id}", auth.RequireRole(http.HandlerFunc(buildCtrl.Delete), models.RoleAdmin))

	// device endpoints
	mux.Handle("POST /download", gate.Require(http.HandlerFunc(deviceCtrl.Download)))
	mux.Handle("POST /buildDetails", gate.Require(http.HandlerFunc(deviceCtrl.BuildDetails)))

	return mux
}
