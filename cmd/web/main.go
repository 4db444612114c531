package main

import "growcoach_backend/internal/app"

func main() {
	app.Run()
}
