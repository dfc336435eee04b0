package studio

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ridoystarlord/tablegen/database"
	"github.com/ridoystarlord/tablegen/generator"
	"github.com/ridoystarlord/tablegen/introspect"
	"github.com/ridoystarlord/tablegen/schema"
)

// Server is a read-only HTTP preview of the declared records, their DDL and
// the tables that already exist in the database.
type Server struct {
	shapes []schema.RecordShape
	db     database.Querier
}

// SchemaResponse is the body of GET /api/schema/:record.
type SchemaResponse struct {
	generator.Statement
	Schema schema.SchemaDescriptor `json:"schema"`
}

// NewServer creates a studio server. db may be nil, in which case the
// table listing reports the database as unavailable.
func NewServer(shapes []schema.RecordShape, db database.Querier) *Server {
	return &Server{shapes: shapes, db: db}
}

// Router registers the studio routes on a new gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.GET("/schema.sql", s.handleSchemaSQL)

	api := r.Group("/api")
	{
		api.GET("/records", s.handleRecords)
		api.GET("/schema", s.handleSchemas)
		api.GET("/schema/:record", s.handleSchema)
		api.GET("/tables", s.handleTables)
	}

	return r
}

// Run serves the studio on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "records": len(s.shapes)})
}

func (s *Server) handleRecords(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"records": s.shapes})
}

func (s *Server) handleSchemas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"statements": generator.GenerateAll(s.shapes)})
}

func (s *Server) handleSchema(c *gin.Context) {
	name := c.Param("record")
	for _, shape := range s.shapes {
		if strings.EqualFold(shape.Name, name) {
			c.JSON(http.StatusOK, SchemaResponse{
				Statement: generator.Generate(shape),
				Schema:    schema.BuildSchema(shape),
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found: " + name})
}

func (s *Server) handleSchemaSQL(c *gin.Context) {
	var sb strings.Builder
	for _, st := range generator.GenerateAll(s.shapes) {
		sb.WriteString(st.SQL)
		sb.WriteString("\n\n")
	}
	c.String(http.StatusOK, sb.String())
}

func (s *Server) handleTables(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no database attached"})
		return
	}

	tables, err := introspect.IntrospectDatabase(c.Request.Context(), s.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read tables: " + err.Error()})
		return
	}
	if tables == nil {
		tables = []introspect.ExistingTable{}
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}
