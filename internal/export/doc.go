// Package export renders a plot into static files.
package export
