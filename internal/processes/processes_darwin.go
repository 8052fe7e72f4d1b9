//go:build darwin

package processes

/*
#include <libproc.h>
*/
import "C"

import (
	"fmt"
	"syscall"
	"unsafe"
)

func listNative(uid int) ([]Process, error) {
	pids, err := allPIDs()
	if err != nil {
		return nil, err
	}

	procs := make([]Process, 0, len(pids))
	for _, pid := range pids {
		if pid <= 0 {
			continue
		}
		if proc, ok := readProc(pid, uid); ok {
			procs = append(procs, proc)
		}
	}
	return procs, nil
}

func readProc(pid C.pid_t, uid int) (Process, bool) {
	var info C.struct_proc_bsdinfo
	if !pidInfo(pid, C.PROC_PIDTBSDINFO, unsafe.Pointer(&info), C.int(unsafe.Sizeof(info))) {
		return Process{}, false
	}
	if int(info.pbi_uid) != uid {
		return Process{}, false
	}

	var paths C.struct_proc_vnodepathinfo
	if !pidInfo(pid, C.PROC_PIDVNODEPATHINFO, unsafe.Pointer(&paths), C.int(unsafe.Sizeof(paths))) {
		return Process{}, false
	}
	cwd := C.GoString(&paths.pvi_cdir.vip_path[0])
	if cwd == "" {
		return Process{}, false
	}

	return Process{
		PID:     int(pid),
		PPID:    int(info.pbi_ppid),
		Command: fallbackCommand(C.GoString(&info.pbi_comm[0]), int(pid)),
		CWD:     cwd,
	}, true
}

// pidInfo wraps proc_pidinfo, treating permission and liveness errors as a
// simple miss.
func pidInfo(pid C.pid_t, flavor C.int, out unsafe.Pointer, size C.int) bool {
	ret, err := C.proc_pidinfo(C.int(pid), flavor, 0, out, size)
	if err != nil {
		if errno, ok := err.(syscall.Errno); ok && (errno == syscall.EPERM || errno == syscall.ESRCH) {
			return false
		}
		return false
	}
	return ret == size
}

func allPIDs() ([]C.pid_t, error) {
	size := C.proc_listpids(C.PROC_ALL_PIDS, 0, nil, 0)
	if size <= 0 {
		return nil, fmt.Errorf("proc_listpids size %d", size)
	}
	count := int(size) / int(unsafe.Sizeof(C.pid_t(0)))
	if count == 0 {
		return nil, nil
	}

	buf := make([]C.pid_t, count)
	ret := C.proc_listpids(C.PROC_ALL_PIDS, 0, unsafe.Pointer(&buf[0]), size)
	if ret <= 0 {
		return nil, fmt.Errorf("proc_listpids returned %d", ret)
	}

	limit := int(ret) / int(unsafe.Sizeof(C.pid_t(0)))
	return buf[:limit], nil
}
