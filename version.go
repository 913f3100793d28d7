package kinetic

// Version is the library version reported by the CLI and the HTTP service.
const Version = "0.3.0"
