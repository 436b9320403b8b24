package assistant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
)

var registry = NewRegistry(NewMongoStore())

// ListTools returns the tool manifest so agent frontends can build their
// tool-selection prompt from live data.
func ListTools(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tools := registry.Manifest()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"count": len(tools),
		"tools": tools,
	})
}

// InvokeTool dispatches a single tool call. The body is the raw JSON argument
// object for the tool. Errors never surface as HTTP failures beyond 404 for
// unknown tools; tool-level problems become {success:false, error} so the
// agent can relay them conversationally.
func InvokeTool(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := ps.ByName("name")
	tool, ok := registry.Get(name)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "unknown tool: "+name)
		return
	}

	args, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if len(args) == 0 {
		args = []byte("{}")
	}
	if !json.Valid(args) {
		utils.RespondWithError(w, http.StatusBadRequest, "arguments must be a JSON object")
		return
	}

	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := tool.Execute(ctx, userID, args)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"result":  result,
	})
}
