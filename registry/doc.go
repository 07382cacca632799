/*
Package registry holds the process-wide lookup tables of HandleStore.

Backend Registry:
Maps a backend name (the "backend" configuration key) to the factory that
builds its handler. Backends register themselves from init():

	func init() {
	    registry.RegisterBackend("rest", func(cfg *config.Config, obj handlemodels.Object, opts ...handler.Option) (handler.Handler, error) {
	        return New(cfg, obj, opts...)
	    })
	}

	factory, err := registry.GetFactory(cfg.Backend)

Registering the same name twice panics. Looking up an unknown name returns
an error matching errors.ErrUnknownBackend.

Index Map Registry:
Associates item types of table-backed stores with their key templates:

	registry.RegisterIndexMap[ddb.Item](map[string]string{
	    "PK": "HANDLE#{Handle}",
	    "SK": "HANDLE#{Handle}",
	})

Both registries are thread-safe and should be populated during initialization.
*/
package registry
