// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Email       string
	Password    string
	DisplayName string
	Role        string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Email:       "email",
	Password:    "passwordhash",
	DisplayName: "displayname",
	Role:        "role",
	IsActive:    "isactive",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
