// Package scene provides the declarative scene source embedkit instantiates
// screens from.
//
// A Registry maps catalog names to Catalogs, and a Catalog maps scene
// identifiers to factories. Components resolve a catalog once, at construction,
// and instantiate scenes from it as needed, so the set of screens an
// application ships is declared in one place.
//
// # Basic Usage
//
//	// Declare scene identifiers as typed constants
//	const (
//	    SceneWelcome scene.Identifier = "Welcome"
//	    SceneLogin   scene.Identifier = "Login"
//	)
//
//	// Build a catalog and register it under a name
//	onboarding := scene.NewCatalog("Onboarding").
//	    Register(SceneWelcome, func() *view.Controller {
//	        return view.NewController("welcome", nil)
//	    }).
//	    Register(SceneLogin, newLoginScreen)
//
//	registry := scene.NewRegistry()
//	registry.Add(onboarding)
//
//	// Resolve once, instantiate many times
//	catalog, err := registry.Resolve("Onboarding")
//	if err != nil {
//	    return err
//	}
//	welcome, err := catalog.Instantiate(SceneWelcome)
//
// Every call to Instantiate produces a new controller; catalogs never cache
// instances.
package scene
