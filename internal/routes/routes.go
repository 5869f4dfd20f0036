package routes

import (
    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/zaqqye/peergrade_backend_v1/internal/config"
    "github.com/zaqqye/peergrade_backend_v1/internal/controllers"
    "github.com/zaqqye/peergrade_backend_v1/internal/groups"
    "github.com/zaqqye/peergrade_backend_v1/internal/middleware"
    "github.com/zaqqye/peergrade_backend_v1/internal/services"
    "github.com/zaqqye/peergrade_backend_v1/internal/session"
    "github.com/zaqqye/peergrade_backend_v1/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, sessions *session.Registry, svc *groups.Service, hub *ws.GroupHub, mailer services.Mailer) {
    authCtrl := &controllers.AuthController{DB: db, Sessions: sessions, Mailer: mailer, CodeTTL: cfg.CodeTTL}
    groupCtrl := &controllers.GroupController{DB: db, Service: svc, Hub: hub}
    courseCtrl := &controllers.CourseController{DB: db, Service: svc}
    assignCtrl := &controllers.AssignmentController{DB: db, Service: svc}
    userCtrl := &controllers.UserController{DB: db}

    // Every route passes through the session gate; paths on the allow-list
    // (and CORS preflights) are let through inside the middleware.
    r.Use(middleware.SessionAuth(sessions, middleware.AuthConfig{
        Disabled:    cfg.AuthDisabled,
        PublicPaths: cfg.PublicPaths,
    }))

    // Public (allow-listed)
    r.GET("/login", authCtrl.Login)
    r.POST("/request_code", authCtrl.RequestCode)

    // Any valid session
    r.POST("/logout", authCtrl.Logout)
    r.GET("/me", authCtrl.Me)

    // Group operations require only a valid session: the SPA hides the
    // controls from students, and the server keeps the source's behavior of
    // not re-checking the teacher flag on these mutations.
    r.POST("/create_group", groupCtrl.CreateGroup)
    r.POST("/delete_group", groupCtrl.DeleteGroup)
    r.POST("/move_student", groupCtrl.MoveStudent)
    r.POST("/save_groups", groupCtrl.SaveGroups)
    r.POST("/randomize_groups/:assignmentId", groupCtrl.RandomizeGroups)
    r.GET("/list_all_groups/:assignmentId", groupCtrl.ListAllGroups)
    r.GET("/list_group_members/:assignmentId/:groupId", groupCtrl.ListGroupMembers)
    r.GET("/list_ua_groups/:assignmentId", groupCtrl.ListUnassigned)

    r.GET("/ws/groups/:assignmentId", ws.GroupHandler(hub))

    // Administrative surface, gated on the session's teacher flag.
    admin := r.Group("", middleware.RequireTeacher())
    {
        admin.GET("/users", userCtrl.ListUsers)
        admin.POST("/users", userCtrl.CreateUser)
        admin.GET("/users/:user_id", userCtrl.GetUser)
        admin.PUT("/users/:user_id", userCtrl.UpdateUser)
        admin.DELETE("/users/:user_id", userCtrl.DeleteUser)
        admin.POST("/import_students", userCtrl.ImportStudents)

        admin.GET("/courses", courseCtrl.ListCourses)
        admin.POST("/courses", courseCtrl.CreateCourse)
        admin.GET("/courses/:id", courseCtrl.GetCourse)
        admin.PUT("/courses/:id", courseCtrl.UpdateCourse)
        admin.DELETE("/courses/:id", courseCtrl.DeleteCourse)
        admin.POST("/enroll", courseCtrl.Enroll)

        admin.GET("/assignments", assignCtrl.ListAssignments)
        admin.POST("/assignments", assignCtrl.CreateAssignment)
        admin.GET("/assignments/:id", assignCtrl.GetAssignment)
        admin.PUT("/assignments/:id", assignCtrl.UpdateAssignment)
        admin.DELETE("/assignments/:id", assignCtrl.DeleteAssignment)
    }
}
