package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status handles GET /status: a plain-text liveness/load summary (no JSON —
// matches the original operator-facing health endpoint).
func Status(c *gin.Context) {
	body := fmt.Sprintf(
		"online-brokers: %d\nonline-workers: %d\ntotal-peers: %d\n",
		deps.Brokers.CountOnline(),
		deps.Metrics.OnlineWorkerCount(),
		deps.Metrics.GetTotalPeerCount(),
	)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

// Index handles GET /: the static landing page.
func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>wgkex broker</title></head>
<body>
<h1>wgkex broker</h1>
<p>This broker exchanges WireGuard keys between clients and gateway workers.</p>
<ul>
<li>POST /api/v1/wg/key/exchange</li>
<li>POST /api/v2/wg/key/exchange</li>
<li>GET /status</li>
</ul>
</body>
</html>
`
