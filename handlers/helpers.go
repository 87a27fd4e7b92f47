package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManjeetSingh-02/project-management-tool/middleware"
	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

// decodeAndValidate decodes the JSON body into dst and runs its validate
// tags. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteError(w, utils.NewBadRequestError(utils.KindValidation, "Invalid request payload"))
		return false
	}
	if fieldErrors := utils.ValidateStruct(dst); fieldErrors != nil {
		utils.WriteFieldErrors(w, fieldErrors)
		return false
	}
	return true
}

// pathObjectID parses a hex object id out of a mux path variable.
func pathObjectID(vars map[string]string, key string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(vars[key])
	if err != nil {
		return primitive.NilObjectID, utils.NewValidationError(key + " is invalid")
	}
	return id, nil
}

// requireActor returns the identity attached by the authentication gate.
func requireActor(w http.ResponseWriter, r *http.Request) (middleware.AuthUser, bool) {
	actor, ok := middleware.GetAuthUser(r)
	if !ok {
		utils.WriteError(w, utils.NewAuthenticationError("Unauthorized"))
		return middleware.AuthUser{}, false
	}
	return actor, true
}

// requireProjectRole resolves the actor and their role in the target
// project, writing InvalidProject when no membership row exists.
func requireProjectRole(w http.ResponseWriter, r *http.Request, members *services.MemberService, projectID primitive.ObjectID) (middleware.AuthUser, models.Role, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return middleware.AuthUser{}, "", false
	}

	role, err := members.ResolveRole(r.Context(), actor.ID, projectID)
	if err != nil {
		utils.WriteError(w, err)
		return middleware.AuthUser{}, "", false
	}

	return actor, role, true
}
