package scheduler

import (
	"math/rand"
	"net/http"
	"time"

	"coachingku_backend/internals/configs"
	"coachingku_backend/internals/logger"
)

var keepAliveClient = &http.Client{Timeout: 10 * time.Second}

var keepAliveFailures int

// keepAlive self-pings the public URL so free-tier hosting doesn't idle the
// instance out. Jittered to avoid every deploy pinging in lockstep.
func (e *Engine) keepAlive() {
	base := configs.GetEnv("RENDER_EXTERNAL_URL")
	if base == "" {
		return
	}

	time.Sleep(time.Duration(rand.Intn(30)) * time.Second)

	resp, err := keepAliveClient.Get(base + "/health")
	if err != nil {
		keepAliveFailures++
		if keepAliveFailures >= 3 {
			logger.Log.Warnf("keep-alive ping failed %d times in a row: %v", keepAliveFailures, err)
		}
		return
	}
	resp.Body.Close()
	keepAliveFailures = 0
}
