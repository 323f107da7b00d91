// README: Persistent map view state.
package mapsnap

// View is the session-lifetime map surface. Created on the first render,
// re-centered (never re-created) on every later one. Only the renderer
// writes it; the compositor only consumes the rasters produced from it.
type View struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
	Width     int
	Height    int
	Marker    Marker
}

// Marker is the pin placed on the view center.
type Marker struct {
	Lat float64
	Lon float64
}
