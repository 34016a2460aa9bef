// ABOUTME: Version information for noisegen
// ABOUTME: Product name and version strings shown in the mixer and logs
package version

const (
	// Version is the current release
	Version = "0.3.0"

	// Product is the display name
	Product = "noisegen"
)

// String returns "noisegen 0.3.0"
func String() string {
	return Product + " " + Version
}
