package auth

// Role membedakan kewenangan tampilan di sisi klien.
// Penegakan sesungguhnya tetap di server.
const (
	RoleKadep = "kadep"
	RoleDosen = "dosen"
)

// User adalah identitas yang dilaporkan server lewat /auth/me.
type User struct {
	UserID    string `json:"user_id"`
	Nama      string `json:"nama"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
