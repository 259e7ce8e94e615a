// Package templates holds the templ components for the HTML pages served by
// the web package. Edit the .templ files and run `templ generate`.
package templates
