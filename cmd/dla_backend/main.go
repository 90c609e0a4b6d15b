package main

import (
	"os"
)

// @title Distributor Ledger API
// @version 1.0
// @description Double-entry bookkeeping, trade documents and distributor onboarding for a single business.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
