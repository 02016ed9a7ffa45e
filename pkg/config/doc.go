// Package config provides configuration management for the stitch CLI.
//
// Configuration is loaded from, in increasing order of precedence:
//  1. Default values
//  2. A YAML file (explicit path, or stitch.yaml in ., $HOME/.stitch, /etc/stitch)
//  3. Environment variables with the STITCH_ prefix
//
// Nested keys use underscores in the environment:
//   - STITCH_NAMESPACE=prod
//   - STITCH_MAX_PRICE=0.5
//   - STITCH_MACHINE_PROVIDER=Google
//   - STITCH_LOG_LEVEL=debug
//
// A sample file:
//
//	namespace: prod
//	admin_acl: ["local"]
//	max_price: 0.5
//	data_dir: /var/lib/stitch
//	log:
//	  level: info
//	  json: true
//	machine:
//	  provider: Amazon
//	  size: m4.large
//	  region: us-west-1
//	  ssh_keys:
//	    - ssh-rsa AAAA...
//
// Loaded values are checked with struct tags before Load returns.
package config
