package app

// Instance describes the running process.
type Instance struct {
	// ID is unique per process run.
	ID string `json:"id"`
	// Name is the program name.
	Name string `json:"name"`
	// Version is the version of the compiled.
	Version string `json:"version"`
	// Metadata is the kv pair metadata associated with the run.
	Metadata map[string]string `json:"metadata"`
}
