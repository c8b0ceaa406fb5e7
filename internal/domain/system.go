package domain

import (
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type SysUser struct {
	ID        int64     `json:"id,string" form:"id"`
	Username  string    `gorm:"index" json:"username" form:"username"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email" form:"email"`
	Password  string    `json:"-" form:"-"`
	Role      string    `gorm:"size:32" json:"role" form:"role"`
	Remark    string    `json:"remark" form:"remark"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysUser) TableName() string {
	return "sys_user"
}

// SysAuthLog records auth and admin mutation events, written
// asynchronously through the event bus.
type SysAuthLog struct {
	ID       int64     `json:"id,string"`
	Username string    `json:"username"`
	Ip       string    `json:"ip"`
	Action   string    `json:"action"`
	Detail   string    `json:"detail"`
	OptTime  time.Time `json:"opt_time"`
}

// TableName Specify table name
func (SysAuthLog) TableName() string {
	return "sys_auth_log"
}
