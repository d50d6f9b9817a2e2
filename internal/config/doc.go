// Package config loads scan tuning and service settings from a JSON file and
// the ENIMDA_* environment variables.
//
// Example file:
//
//	{
//	  "threshold": 0.4,
//	  "fast": false,
//	  "column_sample": 200,
//	  "resize": 400,
//	  "seed": 42
//	}
package config
