// Package hcl implements the config.Loader interface for HCL task
// manifests.
//
// A manifest declares the task vocabulary and binds handler kinds to task
// phases:
//
//	allowlist {
//	  tasks         = ["build", "deploy"]
//	  register_pre  = true
//	  register_post = true
//	}
//
//	task "build" {
//	  description = "Compile the project."
//
//	  pre {
//	    handler "env_vars" {}
//	  }
//
//	  main {
//	    handler "print" {
//	      prefix = "building"
//	    }
//	  }
//	}
package hcl
