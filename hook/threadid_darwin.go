//go:build darwin

package hook

/*
#include <pthread.h>
#include <stdint.h>

static uint64_t currentThreadID(void) {
	uint64_t tid = 0;
	pthread_threadid_np(NULL, &tid);
	return tid;
}
*/
import "C"

func threadID() uint64 { return uint64(C.currentThreadID()) }
