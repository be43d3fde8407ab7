// Package subsets registers all subset definitions with the core registry.
// Import this package to ensure all subsets are registered.
package subsets

// This file exists to provide a single import point.
// Each subset file uses init() to register its subsets.
