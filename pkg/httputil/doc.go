// Package httputil holds the JSON response helpers shared by HTTP handlers.
//
// Errors are written as {"error": CODE, "message": text}. Coded errors from
// [apperrors] map to a status: invalid input, schema, format, project or
// entity give 400, not-found codes give 404, unsupported gives 415 and
// everything else 500.
//
//	res, err := runner.Analyze(ctx, body)
//	if err != nil {
//	    httputil.WriteError(w, err)
//	    return
//	}
//	httputil.WriteJSON(w, http.StatusOK, res)
package httputil
