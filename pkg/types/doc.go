// Package types defines the task and category entities, the patch type used
// for sparse partial updates, the error taxonomy, and the Clock capability
// shared by the taskdeck server and client.
package types
