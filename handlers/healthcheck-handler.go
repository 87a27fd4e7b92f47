package handlers

import (
	"net/http"

	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, "Server is up and running", nil)
}
