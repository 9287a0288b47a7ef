// Package entities provides core domain entities for the SDK.
// These are general-purpose types shared by the adapter, the arena and the
// host-function boundary.
package entities
