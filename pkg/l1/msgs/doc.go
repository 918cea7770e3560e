// Package msgs provides the L1 wire envelope and the generic replies
// shared by every controller.
package msgs
