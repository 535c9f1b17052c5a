package types

import "time"

type GetStatusResponse struct {
	Service       string    `json:"service"`
	Status        string    `json:"status"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
}
