package main

import (
	"os"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/cli"
)

// @title           Acadyoquizz API
// @version         1.0
// @description     Quiz management backend: questionnaires, access codes, attempts
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
