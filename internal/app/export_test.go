package app

// Release drops every holder kept by Load.
func (a *App) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
}
