package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/degreedialog/advisor/internal/common"
	"github.com/degreedialog/advisor/internal/server/users"
)

type userView struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}

type tokenPairView struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type authResponse struct {
	User   userView      `json:"user"`
	Tokens tokenPairView `json:"tokens"`
}

type exchangeView struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *users.User) userView {
	return userView{ID: u.ID, UserName: u.UserName, Email: u.Email}
}

func newAuthResponse(u *users.User, pair *users.TokenPair) authResponse {
	return authResponse{
		User:   newUserView(u),
		Tokens: tokenPairView{Access: pair.AccessToken, Refresh: pair.RefreshToken},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "degree-dialog-advisor",
		"status":  "ok",
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.ErrorValidation)
		return
	}

	user, pair, err := s.users.Register(r.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.UserName)
	writeJSON(w, http.StatusCreated, newAuthResponse(user, pair))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.ErrorValidation)
		return
	}

	user, pair, err := s.users.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(user, pair))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newUserView(userFromContext(r.Context())))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.ErrorValidation)
		return
	}

	reply, err := s.chats.Send(r.Context(), userFromContext(r.Context()).ID, req.Message)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	exchanges, err := s.chats.History(r.Context(), userFromContext(r.Context()).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]exchangeView, 0, len(exchanges))
	for _, e := range exchanges {
		views = append(views, exchangeView{
			ID:        e.ID,
			Message:   e.Message,
			Response:  e.Reply,
			CreatedAt: e.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"history": views})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.chats.Clear(r.Context(), userFromContext(r.Context()).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
