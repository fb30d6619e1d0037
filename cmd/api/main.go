package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/config"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/db"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/handlers"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/middleware"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/realtime"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := db.RunMigrations(gdb); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	hub := realtime.NewHub()
	go hub.Run()

	notifier := realtime.NewNotifier(hub, rdb)
	go notifier.Listen(context.Background())

	app := fiber.New(fiber.Config{
		AppName: "aakash-portfolio-backend",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendBaseURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Device-Id",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	authH := &handlers.AuthHandler{
		DB:          gdb,
		JWTSecret:   cfg.JWTSecret,
		Expires:     cfg.JWTExpiresMin,
		AdminSecret: cfg.AdminSecret,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	projectH := handlers.NewProjectHandler(gdb, notifier)
	adminH := handlers.NewAdminHandler(gdb, notifier, cfg.TaxRate)
	invoiceH := handlers.NewInvoiceHandler(gdb, cfg.TaxRate)
	blogH := handlers.NewBlogHandler(gdb)
	resumeH := handlers.NewResumeHandler(gdb)
	visitorH := handlers.NewVisitorHandler(gdb)
	updateH := handlers.NewUpdateInfoHandler(gdb)
	wsH := handlers.NewWSHandler(hub, cfg.JWTSecret)

	jwtMW := middleware.JWTFromHeader(cfg.JWTSecret)
	localsMW := middleware.AttachJWTLocals()
	adminMW := middleware.RequireRoles(string(models.RoleAdmin))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		dbState := "up"
		if sqlDB, err := gdb.DB(); err != nil || sqlDB.Ping() != nil {
			dbState = "down"
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "OK",
			"data":    fiber.Map{"database": dbState},
		})
	})

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", authH.Signup)
	auth.Post("/admin/signup", authH.AdminSignup)
	auth.Post("/login", authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Get("/google/start", googleH.GoogleStart)
	auth.Get("/google/callback", googleH.GoogleCallback)
	auth.Get("/verify", jwtMW, localsMW, authH.Verify)
	auth.Get("/profile", jwtMW, localsMW, authH.Profile)
	auth.Put("/profile/update", jwtMW, localsMW, authH.UpdateProfile)

	// Client project workflow
	projects := api.Group("/projects", jwtMW, localsMW)
	projects.Post("/", projectH.Submit)
	projects.Get("/", projectH.ListMine)
	projects.Get("/work", projectH.Work)
	projects.Get("/notifications", projectH.Notifications)
	projects.Get("/:id", projectH.GetOne)
	projects.Get("/:id/commits", projectH.GetCommits)

	// Admin project workflow
	admin := api.Group("/admin", jwtMW, localsMW, adminMW)
	admin.Get("/clients", adminH.GetAllClients)
	admin.Get("/clients/:id", adminH.GetClientByID)
	admin.Get("/dashboard", adminH.DashboardStats)
	admin.Get("/projects", adminH.ListProjects)
	admin.Get("/projects/statistics", adminH.Statistics)
	admin.Get("/projects/:id", adminH.GetProject)
	admin.Put("/projects/:id/accept", adminH.Accept)
	admin.Put("/projects/:id/negotiate", adminH.Negotiate)
	admin.Put("/projects/:id/reject", adminH.Reject)
	admin.Post("/projects/:id/payments", adminH.AddPayment)
	admin.Post("/projects/:id/commits", adminH.AddCommit)
	admin.Put("/projects/:projectId/commits/:weekNumber", adminH.UpdateCommit)
	admin.Delete("/projects/:projectId/commits/:weekNumber", adminH.DeleteCommit)

	// Invoices: admins reach any project, clients their own.
	invoices := api.Group("/invoices", jwtMW, localsMW)
	invoices.Get("/admin/all", adminMW, invoiceH.AllInvoices)
	invoices.Post("/project/:projectId", adminMW, invoiceH.Create)
	invoices.Get("/project/:projectId/summary", invoiceH.Summary)
	invoices.Get("/project/:projectId/quick-options", adminMW, invoiceH.QuickOptions)
	invoices.Get("/project/:projectId", invoiceH.ProjectInvoices)
	invoices.Get("/project/:projectId/:invoiceNumber/pdf", invoiceH.Download)
	invoices.Get("/project/:projectId/:invoiceNumber", invoiceH.GetInvoice)
	invoices.Put("/project/:projectId/:invoiceNumber/pay", adminMW, invoiceH.MarkPaid)

	// Blog: admin authoring plus anonymous public engagement.
	blogs := api.Group("/blogs")
	blogs.Get("/admin/all", jwtMW, localsMW, adminMW, blogH.AdminList)
	blogs.Post("/", jwtMW, localsMW, adminMW, blogH.Create)
	blogs.Put("/:id", jwtMW, localsMW, adminMW, blogH.Update)
	blogs.Delete("/:id", jwtMW, localsMW, adminMW, blogH.Delete)
	blogs.Get("/", blogH.PublicFeed)
	blogs.Get("/:slug", middleware.TrackDevice(), blogH.GetBySlug)
	blogs.Post("/:id/like", middleware.TrackDevice(), blogH.ToggleLike)
	blogs.Post("/:id/comment", middleware.TrackDevice(), blogH.AddComment)

	// Resume. The visitor counter is anonymous and shares the /resume prefix,
	// so its routes are registered ahead of the admin group: group middleware
	// applies to every later-registered route under the prefix.
	api.Get("/resume/public", resumeH.Public)
	api.Post("/resume/visitor", middleware.TrackDevice(), visitorH.Track)
	api.Get("/resume/visitor", visitorH.Count)
	api.Get("/resume/visitor/unique", jwtMW, localsMW, adminMW, visitorH.Unique)
	resume := api.Group("/resume", jwtMW, localsMW, adminMW)
	resume.Get("/", resumeH.Get)
	resume.Put("/", resumeH.Update)
	resume.Post("/skills", resumeH.AddSkillGroup)
	resume.Put("/skills/:index", resumeH.UpdateSkillGroup)
	resume.Delete("/skills/:index", resumeH.DeleteSkillGroup)
	resume.Post("/education", resumeH.AddEducation)
	resume.Put("/education/:id", resumeH.UpdateEducation)
	resume.Delete("/education/:id", resumeH.DeleteEducation)
	resume.Post("/certifications", resumeH.AddCertification)
	resume.Put("/certifications/:id", resumeH.UpdateCertification)
	resume.Delete("/certifications/:id", resumeH.DeleteCertification)
	resume.Post("/projects", resumeH.AddProject)
	resume.Put("/projects/:id", resumeH.UpdateProject)
	resume.Delete("/projects/:id", resumeH.DeleteProject)
	resume.Post("/extracurricular", resumeH.AddExtracurricular)
	resume.Put("/extracurricular/:id", resumeH.UpdateExtracurricular)
	resume.Delete("/extracurricular/:id", resumeH.DeleteExtracurricular)
	resume.Post("/custom-sections", resumeH.AddCustomSection)
	resume.Put("/custom-sections/:id", resumeH.UpdateCustomSection)
	resume.Delete("/custom-sections/:id", resumeH.DeleteCustomSection)

	// Announcement banner
	api.Get("/updates", updateH.Active)
	updates := api.Group("/updates", jwtMW, localsMW, adminMW)
	updates.Get("/all", updateH.List)
	updates.Post("/", updateH.Create)
	updates.Put("/:id/deactivate", updateH.Deactivate)

	// Realtime notifications
	app.Get("/ws/notifications", wsH.Upgrade, wsH.Serve())

	log.Printf("listening on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
