//go:build linux || darwin
// +build linux darwin

package zone

import "golang.org/x/sys/unix"

// allocPage obtains a zeroed, anonymous, private mapping for one zone
// page. Unmapping is deliberately never performed: zone pages are kept on
// the free list for the lifetime of the process and reused across
// functions, matching the resource model's "pages are reclaimed by the
// zone reset" guarantee rather than returned to the OS.
func allocPage(size int) ([]byte, error) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, ErrNoHeapMemory
	}
	return buf, nil
}
