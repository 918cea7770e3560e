// Package env provides the common environment of L1 controllers and
// the peers connecting to them.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID salts the machine id so the raw id never leaves the host.
const AppID = "drs"

// MachineID retrieves the unique ID identifying the machine. The host
// name is used when the machine id isn't available.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err == nil {
		return id[:16]
	}
	glog.Warningf("machine id unavailable: %v", err)
	if id, err = os.Hostname(); err != nil {
		panic(err)
	}
	return id
}
