package monitoring

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"stitch-backend/pkg/utils"
)

// Server exposes an internal ops endpoint with live process and database
// stats. It listens on its own port so it is never reachable through the
// public API ingress.
type Server struct {
	db      *pgxpool.Pool
	port    int
	started time.Time

	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
}

type Stats struct {
	DatabaseStatus    string  `json:"database_status"`
	ActiveConnections int     `json:"active_connections"`
	ResponseTime      int64   `json:"response_time_ms"`
	DBSize            string  `json:"db_size"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	MemoryUsed        string  `json:"memory_used"`
	MemoryTotal       string  `json:"memory_total"`
	DiskPercent       float64 `json:"disk_percent"`
	Uptime            string  `json:"uptime"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // internal port only
}

func NewServer(db *pgxpool.Pool, port int) *Server {
	return &Server{
		db:      db,
		port:    port,
		started: time.Now(),
		clients: make(map[*websocket.Conn]bool),
	}
}

// Start runs the ops server and the stats broadcaster. Blocks; run in a
// goroutine.
func (s *Server) Start() error {
	r := mux.NewRouter()
	r.HandleFunc("/ops/stats", s.handleStats).Methods("GET")
	r.HandleFunc("/ops/ws", s.handleWebSocket)

	go s.broadcastLoop()

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] Ops server listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, s.collect())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.clientsMux.Lock()
	s.clients[conn] = true
	s.clientsMux.Unlock()

	// Reader only to detect close.
	go func() {
		defer func() {
			s.clientsMux.Lock()
			delete(s.clients, conn)
			s.clientsMux.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcastLoop pushes fresh stats to connected ops dashboards.
func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.clientsMux.Lock()
		if len(s.clients) == 0 {
			s.clientsMux.Unlock()
			continue
		}
		stats := s.collect()
		for conn := range s.clients {
			if err := conn.WriteJSON(stats); err != nil {
				delete(s.clients, conn)
				conn.Close()
			}
		}
		s.clientsMux.Unlock()
	}
}

func (s *Server) collect() Stats {
	stats := Stats{
		DatabaseStatus: "healthy",
		Uptime:         time.Since(s.started).Round(time.Second).String(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := s.db.Ping(ctx); err != nil {
		stats.DatabaseStatus = "unhealthy"
	}
	stats.ResponseTime = time.Since(start).Milliseconds()
	stats.ActiveConnections = int(s.db.Stat().TotalConns())

	var size string
	if err := s.db.QueryRow(ctx, "SELECT pg_size_pretty(pg_database_size(current_database()))").Scan(&size); err == nil {
		stats.DBSize = size
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsed = formatBytes(vm.Used)
		stats.MemoryTotal = formatBytes(vm.Total)
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}
	return stats
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
