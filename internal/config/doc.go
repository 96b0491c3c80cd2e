// Package config loads and watches the exporter configuration file.
//
// Top-level types:
//   - Config — listen_address, log_level, upstream
//   - UpstreamConfig — url, timeout, auth, tls for the Dashboards API
//   - AuthConfig — literal username or username_env fallback, password_env;
//     User() and Password() resolve from environment variables so secrets
//     stay out of the file
//
// Load(path) parses the YAML file, applies defaults (listen on
// localhost:9684, upstream http://localhost:5601, 5s fetch timeout), then
// validates addresses and enums. An empty path skips the file and returns
// pure defaults, so the exporter runs without any config file at all.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. The watch is placed on the parent
// directory so atomic-save editors (vim, VS Code) that replace the file via
// rename keep triggering reloads.
package config
