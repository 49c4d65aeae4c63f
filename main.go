package main

import (
	"os"

	"github.com/GoSchoolHub/GoSchoolHub/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
