package controllers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExportController streams whole tables as CSV or JSON attachments.
type ExportController struct {
	DB *gorm.DB
}

var exportableTables = map[string]struct{}{
	"groups":          {},
	"students":        {},
	"subjects":        {},
	"schedule_slots":  {},
	"journal_entries": {},
	"explanations":    {},
	"attestations":    {},
}

func (e *ExportController) ListTables(c *gin.Context) {
	names := make([]string, 0, len(exportableTables))
	for name := range exportableTables {
		names = append(names, name)
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"tables": names})
}

func (e *ExportController) ExportTable(c *gin.Context) {
	table := c.Param("table")
	if _, ok := exportableTables[table]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table"})
		return
	}

	var rows []map[string]interface{}
	if err := e.DB.Table(table).Order("id").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", table))
		c.Data(http.StatusOK, "application/json", data)
	case "csv":
		data, err := rowsToCSV(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", table))
		c.Data(http.StatusOK, "text/csv", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or json"})
	}
}

func rowsToCSV(rows []map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(rows) == 0 {
		w.Flush()
		return buf.Bytes(), w.Error()
	}

	header := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		header = append(header, col)
	}
	sort.Strings(header)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := make([]string, 0, len(header))
		for _, col := range header {
			record = append(record, formatCSVValue(row[col]))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatCSVValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
