// Package config builds logging pipelines from YAML files.
//
// A file declares the minimum level, the formatter, and a list of
// sinks. The result of Load or Parse is a ready *logger.Config that
// the caller installs with logger.Configure or
// logger.ConfigureCategory.
//
//	level: info
//	formatter:
//	  type: json
//	  timestamp: iso8601
//	sinks:
//	  - type: stdout
//	  - type: file
//	    path: /var/log/app.log
//	    max_size_bytes: 1048576
//	    max_backups: 3
//	    async:
//	      capacity: 1024
//	      policy: drop_oldest
//
// Validation happens at load time. A malformed file yields an error
// and no config, never a half-built pipeline.
package config
