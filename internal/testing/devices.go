package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
)

// CrossDeviceFs wraps an afero.Fs and treats each mount as a separate
// device: a Rename whose endpoints sit on different devices fails with
// EXDEV, like os.Rename across filesystems.
type CrossDeviceFs struct {
	afero.Fs
	mounts []string
}

// NewCrossDeviceFs returns base with the given mount points.
func NewCrossDeviceFs(base afero.Fs, mounts ...string) *CrossDeviceFs {
	cleaned := make([]string, 0, len(mounts))
	for _, mount := range mounts {
		cleaned = append(cleaned, filepath.Clean(mount))
	}
	return &CrossDeviceFs{Fs: base, mounts: cleaned}
}

// Rename fails with EXDEV when oldname and newname are on different mounts.
func (c *CrossDeviceFs) Rename(oldname, newname string) error {
	if c.device(oldname) != c.device(newname) {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EXDEV}
	}
	return c.Fs.Rename(oldname, newname)
}

func (c *CrossDeviceFs) device(path string) string {
	path = filepath.Clean(path)
	device := ""
	for _, mount := range c.mounts {
		inside := path == mount || strings.HasPrefix(path, mount+string(filepath.Separator))
		if inside && len(mount) > len(device) {
			device = mount
		}
	}
	return device
}
