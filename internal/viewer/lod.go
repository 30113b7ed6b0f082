package viewer

// farView reports whether the polyline should replace the near mesh.
// A non-positive threshold keeps the near mesh at every distance.
func farView(distance, threshold float32) bool {
	return threshold > 0 && distance > threshold
}

// lodThreshold returns the configured switch distance, or twice the
// fitted camera distance when none is configured.
func lodThreshold(configured, fitted float32) float32 {
	if configured > 0 {
		return configured
	}
	return 2 * fitted
}
