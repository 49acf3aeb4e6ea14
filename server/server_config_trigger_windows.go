//go:build windows

package server

// not supported under windows
func registerPrintConfigurationTrigger(s *Server) {
}
