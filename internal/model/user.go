package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// The APIKey column holds the long‑lived credential issued at
// registration. It is used by the authentication filter to mint
// fresh access tokens when the short‑lived token has expired.
// Deletion is soft: DeletedAt is set instead of removing the row.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – display name shown to other users.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  APIKey       – long‑lived credential (UUID), unique per user.
//  DeletedAt    – when the account was soft deleted (null if active).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64     // users.id
    Username     string     // users.username
    Email        string     // users.email
    PasswordHash string     // users.password_hash
    APIKey       string     // users.api_key
    DeletedAt    *time.Time // users.deleted_at (nullable)
    CreatedAt    time.Time  // users.created_at
    UpdatedAt    time.Time  // users.updated_at
}
