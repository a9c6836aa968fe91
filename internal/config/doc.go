// Package config loads and validates reconcile.json, the settings file read
// by the reconcile command.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 7400,
//	    "path": "/stream"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "reconcile"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracer": "reconcile"
//	  },
//	  "snapshot": {
//	    "driver": "s3",
//	    "bucket": "render-snapshots",
//	    "prefix": "ci/",
//	    "region": "eu-west-1"
//	  },
//	  "log": { "level": "debug" },
//	  "render": { "pretty": true, "indent": "  " }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
