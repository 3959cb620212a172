package main

// @title Storefront Location API
// @version 1.0
// @description Country, state and city selection with coordinate resolution for the storefront
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /
