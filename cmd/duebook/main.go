package main

//go:generate swag init --dir .,../../internal/handlers,../../internal/dto --generalInfo main.go --output ../docs --outputTypes go

import (
	"fmt"
	"os"
)

// @title Duebook API
// @version 1.0
// @description Tracks bills to pay and money to receive.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
