// Package deploy runs the build, package and upload steps that publish a
// program to the selected organization. Each step gates the next: nothing
// touches the network unless the build succeeded and credentials are
// present.
package deploy
