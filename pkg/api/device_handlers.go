package api

import (
	"net/http"

	"github.com/openqpu/pulsecheck/pkg/httputil"
)

// DeviceList is the body of GET /api/v1/devices.
type DeviceList struct {
	Devices []string `json:"devices"`
}

// listDevices handles GET /api/v1/devices
func (s *Server) listDevices(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, DeviceList{Devices: s.registry.Names()})
}

// getDevice handles GET /api/v1/devices/{name}
func (s *Server) getDevice(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	caps, found := s.registry.Get(name)
	if !found {
		httputil.WriteNotFound(w, "unknown device profile: "+name)
		return
	}
	httputil.WriteSuccess(w, caps)
}
