// Package pages holds the server-rendered views: landing, home, about and the
// login/register form.
package pages

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	Landing = "landing.html"
	Home    = "home.html"
	About   = "about.html"
	Auth    = "auth.html"
)

// ProductName appears in titles and the navigation bar
const ProductName = "GreenSense"

// NavItem is one card on the dashboard-navigation home page
type NavItem struct {
	Title       string
	Description string
	Href        string
}

// DashboardSections are the destinations offered on the home page
var DashboardSections = []NavItem{
	{Title: "Live Readings", Description: "Current temperature, humidity and status for every zone.", Href: "/api/demo/current"},
	{Title: "History", Description: "Trends over the last hour up to the last 30 days.", Href: "/api/demo/history?range=24h"},
	{Title: "Daily Cycle", Description: "Smoothed day/night profile of the greenhouse climate.", Href: "/api/demo/local?hours=24"},
	{Title: "About", Description: "How readings are collected and classified.", Href: "/about"},
}

// Feature is a selling point on the landing page
type Feature struct {
	Title string
	Body  string
}

// LandingFeatures are rendered as cards on the landing page
var LandingFeatures = []Feature{
	{Title: "Real-time monitoring", Body: "Temperature and humidity from every sensor, refreshed continuously."},
	{Title: "Early warnings", Body: "Readings are classified as Normal, Warning or Alert so problems surface before crops suffer."},
	{Title: "History at a glance", Body: "Charts from the last hour to the last month, with labels sized to the range."},
}

// Threshold describes one classification band on the about panel
type Threshold struct {
	Label string
	Rule  string
}

// Base is the data every page gets
type Base struct {
	Title    string
	Product  string
	Username string
	LoggedIn bool
	Year     int
}

// NewBase fills the common page fields
func NewBase(title, username string, loggedIn bool) Base {
	return Base{
		Title:    title,
		Product:  ProductName,
		Username: username,
		LoggedIn: loggedIn,
		Year:     time.Now().Year(),
	}
}

// LandingData backs landing.html
type LandingData struct {
	Base
	Features []Feature
}

// HomeData backs home.html
type HomeData struct {
	Base
	Sections []NavItem
}

// AboutData backs about.html
type AboutData struct {
	Base
	Thresholds []Threshold
	Ranges     []string
}

// AuthData backs auth.html
type AuthData struct {
	Base
	Register  bool
	Error     string
	Username  string
	FirstName string
	LastName  string
}

// Load parses every embedded template
func Load() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}
