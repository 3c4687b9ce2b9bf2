package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public paths: printer health for the status header, GraphQL read surface
	return []string{"/api/impresion/salud", "/graphql"}
}
