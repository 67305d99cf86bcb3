// Package monitoring exposes a small operational stats endpoint on its own
// port, separate from the public API surface.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type MonitoringServer struct {
	db      *pgxpool.Pool
	port    int
	started time.Time
}

type Stats struct {
	Status          string  `json:"status"`
	Uptime          string  `json:"uptime"`
	CPUPercent      float64 `json:"cpu_percent"`
	MemoryPercent   float64 `json:"memory_percent"`
	DiskPercent     float64 `json:"disk_percent"`
	DBTotalConns    int32   `json:"db_total_conns"`
	DBIdleConns     int32   `json:"db_idle_conns"`
	DBAcquiredConns int32   `json:"db_acquired_conns"`
}

func NewMonitoringServer(db *pgxpool.Pool, port int) *MonitoringServer {
	return &MonitoringServer{db: db, port: port, started: time.Now()}
}

func (s *MonitoringServer) Start() {
	r := mux.NewRouter()
	r.HandleFunc("/stats", s.handleStats).Methods("GET")

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] Stats server listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Printf("[Monitoring] Stats server stopped: %v", err)
	}
}

func (s *MonitoringServer) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := Stats{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}

	if s.db != nil {
		poolStats := s.db.Stat()
		stats.DBTotalConns = poolStats.TotalConns()
		stats.DBIdleConns = poolStats.IdleConns()
		stats.DBAcquiredConns = poolStats.AcquiredConns()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
