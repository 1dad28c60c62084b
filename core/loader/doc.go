// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and is registered with a
// Manager, which loads the enabled ones onto the Fiber application:
//
//	mgr := loader.NewManager()
//	mgr.Register(matching.NewFeature(svc, logg))
//	names, err := mgr.LoadAll(app)
package loader
