// Package docs holds the OpenAPI document served at /swagger. It follows the
// swag annotations on the handlers; update both together.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/autores/": {
            "get": {
                "summary": "List authors",
                "description": "Every author with the books they wrote. An empty table answers 404.",
                "tags": [
                    "autores"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ListAuthorsResponse"
                        }
                    },
                    "404": {
                        "description": "No authors",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create an author",
                "tags": [
                    "autores"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Author to create",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateAuthorRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.AuthorResponse"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/autores/{id}": {
            "get": {
                "summary": "Get an author by ID",
                "tags": [
                    "autores"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Author ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.AuthorResponse"
                        }
                    },
                    "404": {
                        "description": "Author not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update an author",
                "description": "Only the supplied fields change.",
                "tags": [
                    "autores"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Author ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateAuthorRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.AuthorResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Author not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete an author",
                "description": "Books keep existing; only their link to this author is removed.",
                "tags": [
                    "autores"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Author ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No content"
                    },
                    "404": {
                        "description": "Author not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/autores/{id}/libros": {
            "get": {
                "summary": "List an author's books",
                "tags": [
                    "autores"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Author ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.BookSummariesResponse"
                        }
                    },
                    "404": {
                        "description": "Author not found or without books",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/check": {
            "get": {
                "summary": "Check that the API is running",
                "description": "Reports the host's outbound IP and the caller's IP.",
                "tags": [
                    "sistema"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.CheckResponse"
                        }
                    }
                }
            }
        },
        "/db": {
            "get": {
                "summary": "Inspect the database",
                "description": "Lists the tables of the connected database. Credentials are masked.",
                "tags": [
                    "sistema"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.DBInfoResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/generos/": {
            "get": {
                "summary": "List genres",
                "description": "An empty table answers 404.",
                "tags": [
                    "generos"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ListGenresResponse"
                        }
                    },
                    "404": {
                        "description": "No genres",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a genre",
                "description": "The name is stored lowercased; names that differ only in case collide.",
                "tags": [
                    "generos"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Genre to create",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateGenreRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.GenreResponse"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Genre already exists",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/generos/nombre/{nombre}": {
            "get": {
                "summary": "Get a genre by name",
                "tags": [
                    "generos"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Genre name, any case",
                        "name": "nombre",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.GenreResponse"
                        }
                    },
                    "404": {
                        "description": "Genre not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/generos/{id}": {
            "get": {
                "summary": "Get a genre by ID",
                "tags": [
                    "generos"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Genre ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.GenreResponse"
                        }
                    },
                    "404": {
                        "description": "Genre not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a genre",
                "tags": [
                    "generos"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Genre ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateGenreRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.GenreResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Genre not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Genre already exists",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete a genre",
                "description": "Books keep existing; only their link to this genre is removed.",
                "tags": [
                    "generos"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Genre ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No content"
                    },
                    "404": {
                        "description": "Genre not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Liveness probe",
                "tags": [
                    "sistema"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.HealthResponse"
                        }
                    }
                }
            }
        },
        "/libros/": {
            "get": {
                "summary": "List books",
                "description": "Get every book with its authors and genres. An empty catalog answers 404.",
                "tags": [
                    "libros"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ListBooksResponse"
                        }
                    },
                    "404": {
                        "description": "No books",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a book",
                "description": "Create a book and link it to existing authors and genres. Every referenced id must exist or nothing is written.",
                "tags": [
                    "libros"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Book to create",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateBookRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.BookResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid ISBN, payload or references",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "ISBN already exists",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/libros/autor/{autor}": {
            "get": {
                "summary": "List books by author",
                "description": "Case-insensitive match on the author's first name, last name or full name.",
                "tags": [
                    "libros"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Author name",
                        "name": "autor",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ListBooksResponse"
                        }
                    },
                    "404": {
                        "description": "No books for author",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/libros/isbn/{isbn}": {
            "get": {
                "summary": "Get a book by ISBN",
                "description": "The ISBN checksum is verified before the lookup. Hyphens and spaces are ignored.",
                "tags": [
                    "libros"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "ISBN-10 or ISBN-13",
                        "name": "isbn",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.BookResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid ISBN",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Book not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/libros/pdf/download": {
            "get": {
                "summary": "Export the catalog as PDF",
                "description": "A document titled \"Lista de libros\" with one line per book title.",
                "tags": [
                    "libros"
                ],
                "produces": [
                    "application/pdf"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "No books",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/libros/{id}": {
            "get": {
                "summary": "Get a book by ID",
                "tags": [
                    "libros"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Book ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.BookResponse"
                        }
                    },
                    "404": {
                        "description": "Book not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a book",
                "description": "Only the supplied fields change. A supplied autores or generos list replaces the current one.",
                "tags": [
                    "libros"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Book ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateBookRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.BookResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid payload, ISBN or references",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Book not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "ISBN already exists",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete a book",
                "description": "Delete a book. Its author, genre and loan links are removed with it.",
                "tags": [
                    "libros"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Book ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No content"
                    },
                    "404": {
                        "description": "Book not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/prestamos/": {
            "get": {
                "summary": "List loans",
                "description": "An empty table answers 404.",
                "tags": [
                    "prestamos"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ListLoansResponse"
                        }
                    },
                    "404": {
                        "description": "No loans",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a loan",
                "description": "The user and every book must exist. Estado defaults to activo.",
                "tags": [
                    "prestamos"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Loan to create",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateLoanRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.LoanResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid payload or references",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/prestamos/{id}": {
            "get": {
                "summary": "Get a loan by ID",
                "tags": [
                    "prestamos"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Loan ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.LoanResponse"
                        }
                    },
                    "404": {
                        "description": "Loan not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a loan",
                "description": "Only the supplied fields change. A supplied libros_id list replaces the borrowed books.",
                "tags": [
                    "prestamos"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Loan ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateLoanRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.LoanResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid payload or references",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Loan not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete a loan",
                "tags": [
                    "prestamos"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Loan ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No content"
                    },
                    "404": {
                        "description": "Loan not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness probe",
                "description": "Pings the database.",
                "tags": [
                    "sistema"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/handler.HealthResponse"
                        }
                    }
                }
            }
        },
        "/usuarios/": {
            "get": {
                "summary": "List users",
                "description": "An empty table answers 404.",
                "tags": [
                    "usuarios"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ListUsersResponse"
                        }
                    },
                    "404": {
                        "description": "No users",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a user",
                "description": "The password is stored as a bcrypt hash and never returned.",
                "tags": [
                    "usuarios"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "User to create",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateUserRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email or dni already exists",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/usuarios/email/{email}": {
            "get": {
                "summary": "Get a user by email",
                "tags": [
                    "usuarios"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Email",
                        "name": "email",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.UserResponse"
                        }
                    },
                    "404": {
                        "description": "User not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/usuarios/{id}": {
            "get": {
                "summary": "Get a user by ID",
                "tags": [
                    "usuarios"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "User ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.UserResponse"
                        }
                    },
                    "404": {
                        "description": "User not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a user",
                "description": "Only the supplied fields change. A new password is re-hashed.",
                "tags": [
                    "usuarios"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "User ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateUserRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "User not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email or dni already exists",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete a user",
                "description": "Users with loans cannot be deleted.",
                "tags": [
                    "usuarios"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "User ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No content"
                    },
                    "404": {
                        "description": "User not found",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "User has loans",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/usuarios/{id}/prestamos": {
            "get": {
                "summary": "List a user's loans",
                "tags": [
                    "usuarios"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "User ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ListLoansResponse"
                        }
                    },
                    "404": {
                        "description": "User not found or without loans",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Invalid ID",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/validation.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.Author": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "nombre": {
                    "type": "string"
                },
                "apellidos": {
                    "type": "string"
                },
                "nacionalidad": {
                    "type": "string"
                },
                "fecha_nacimiento": {
                    "type": "string",
                    "example": "1931-02-18"
                },
                "fecha_fallecimiento": {
                    "type": "string",
                    "example": "2019-08-05"
                },
                "biografia": {
                    "type": "string"
                },
                "imagen": {
                    "type": "string"
                },
                "libros": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.BookSummary"
                    }
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "handler.AuthorResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/handler.Author"
                }
            }
        },
        "handler.AuthorSummary": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "nombre": {
                    "type": "string"
                },
                "apellidos": {
                    "type": "string"
                }
            }
        },
        "handler.Book": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "isbn": {
                    "type": "string"
                },
                "titulo": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                },
                "editorial": {
                    "type": "string"
                },
                "pais": {
                    "type": "string"
                },
                "idioma": {
                    "type": "string"
                },
                "num_paginas": {
                    "type": "integer"
                },
                "ano_edicion": {
                    "type": "integer"
                },
                "precio": {
                    "type": "number"
                },
                "autores": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.AuthorSummary"
                    }
                },
                "generos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.GenreSummary"
                    }
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "handler.BookResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/handler.Book"
                }
            }
        },
        "handler.BookSummariesResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.BookSummary"
                    }
                }
            }
        },
        "handler.BookSummary": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "isbn": {
                    "type": "string"
                },
                "titulo": {
                    "type": "string"
                }
            }
        },
        "handler.CheckResponse": {
            "type": "object",
            "properties": {
                "IP": {
                    "type": "string"
                },
                "client_ip": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "handler.CreateAuthorRequest": {
            "type": "object",
            "required": [
                "apellidos",
                "biografia",
                "fecha_nacimiento",
                "nacionalidad",
                "nombre"
            ],
            "properties": {
                "nombre": {
                    "type": "string",
                    "maxLength": 100
                },
                "apellidos": {
                    "type": "string",
                    "maxLength": 100
                },
                "nacionalidad": {
                    "type": "string",
                    "maxLength": 100
                },
                "fecha_nacimiento": {
                    "type": "string",
                    "example": "1931-02-18"
                },
                "fecha_fallecimiento": {
                    "type": "string",
                    "example": "2019-08-05"
                },
                "biografia": {
                    "type": "string"
                },
                "imagen": {
                    "type": "string",
                    "maxLength": 500
                }
            }
        },
        "handler.CreateBookRequest": {
            "type": "object",
            "required": [
                "isbn",
                "titulo"
            ],
            "properties": {
                "isbn": {
                    "type": "string"
                },
                "titulo": {
                    "type": "string",
                    "maxLength": 255
                },
                "descripcion": {
                    "type": "string",
                    "maxLength": 5000
                },
                "editorial": {
                    "type": "string",
                    "maxLength": 255
                },
                "pais": {
                    "type": "string",
                    "maxLength": 100
                },
                "idioma": {
                    "type": "string",
                    "maxLength": 50
                },
                "num_paginas": {
                    "type": "integer",
                    "minimum": 0
                },
                "ano_edicion": {
                    "type": "integer",
                    "minimum": 0
                },
                "precio": {
                    "type": "number",
                    "minimum": 0.0
                },
                "autores": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    },
                    "example": "1"
                },
                "generos": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    },
                    "example": "1"
                }
            }
        },
        "handler.CreateGenreRequest": {
            "type": "object",
            "required": [
                "nombre"
            ],
            "properties": {
                "nombre": {
                    "type": "string",
                    "maxLength": 100
                },
                "descripcion": {
                    "type": "string",
                    "maxLength": 2000
                }
            }
        },
        "handler.CreateLoanRequest": {
            "type": "object",
            "required": [
                "fecha_devolucion",
                "fecha_prestamo",
                "libros_id",
                "usuario_id"
            ],
            "properties": {
                "fecha_prestamo": {
                    "type": "string",
                    "example": "2024-03-01"
                },
                "fecha_devolucion": {
                    "type": "string",
                    "example": "2024-03-15"
                },
                "estado": {
                    "type": "string",
                    "example": "activo",
                    "enum": [
                        "activo",
                        "devuelto",
                        "retrasado"
                    ]
                },
                "usuario_id": {
                    "type": "integer"
                },
                "libros_id": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    },
                    "minItems": 1
                }
            }
        },
        "handler.CreateUserRequest": {
            "type": "object",
            "required": [
                "apellido",
                "ciudad",
                "direccion",
                "dni",
                "email",
                "fecha_nacimiento",
                "nombre",
                "pais",
                "password",
                "telefono"
            ],
            "properties": {
                "email": {
                    "type": "string",
                    "maxLength": 255
                },
                "nombre": {
                    "type": "string",
                    "maxLength": 100
                },
                "apellido": {
                    "type": "string",
                    "maxLength": 100
                },
                "fecha_nacimiento": {
                    "type": "string",
                    "example": "1990-05-17"
                },
                "dni": {
                    "type": "string",
                    "maxLength": 20
                },
                "pais": {
                    "type": "string",
                    "maxLength": 100
                },
                "ciudad": {
                    "type": "string",
                    "maxLength": 100
                },
                "direccion": {
                    "type": "string",
                    "maxLength": 255
                },
                "telefono": {
                    "type": "string",
                    "maxLength": 30
                },
                "password": {
                    "type": "string",
                    "minLength": 8,
                    "maxLength": 72
                }
            }
        },
        "handler.DBInfoResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                },
                "tablas": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "num_tablas": {
                    "type": "integer"
                }
            }
        },
        "handler.DBStatus": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "dialect": {
                    "type": "string"
                }
            }
        },
        "handler.Genre": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "nombre": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "handler.GenreResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/handler.Genre"
                }
            }
        },
        "handler.GenreSummary": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "nombre": {
                    "type": "string"
                }
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "uptime": {
                    "type": "integer"
                },
                "db": {
                    "$ref": "#/definitions/handler.DBStatus"
                }
            }
        },
        "handler.ListAuthorsResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.Author"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "handler.ListBooksResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.Book"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "handler.ListGenresResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.Genre"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "handler.ListLoansResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.Loan"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "handler.ListUsersResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.User"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "handler.Loan": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "fecha_prestamo": {
                    "type": "string",
                    "example": "2024-03-01"
                },
                "fecha_devolucion": {
                    "type": "string",
                    "example": "2024-03-15"
                },
                "estado": {
                    "type": "string",
                    "example": "activo"
                },
                "usuario_id": {
                    "type": "integer"
                },
                "libros_id": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "libros": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.BookSummary"
                    }
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "handler.LoanResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/handler.Loan"
                }
            }
        },
        "handler.UpdateAuthorRequest": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string",
                    "maxLength": 100
                },
                "apellidos": {
                    "type": "string",
                    "maxLength": 100
                },
                "nacionalidad": {
                    "type": "string",
                    "maxLength": 100
                },
                "fecha_nacimiento": {
                    "type": "string",
                    "example": "1931-02-18"
                },
                "fecha_fallecimiento": {
                    "type": "string",
                    "example": "2019-08-05"
                },
                "biografia": {
                    "type": "string"
                },
                "imagen": {
                    "type": "string",
                    "maxLength": 500
                }
            }
        },
        "handler.UpdateBookRequest": {
            "type": "object",
            "properties": {
                "isbn": {
                    "type": "string"
                },
                "titulo": {
                    "type": "string",
                    "maxLength": 255
                },
                "descripcion": {
                    "type": "string",
                    "maxLength": 5000
                },
                "editorial": {
                    "type": "string",
                    "maxLength": 255
                },
                "pais": {
                    "type": "string",
                    "maxLength": 100
                },
                "idioma": {
                    "type": "string",
                    "maxLength": 50
                },
                "num_paginas": {
                    "type": "integer",
                    "minimum": 0
                },
                "ano_edicion": {
                    "type": "integer",
                    "minimum": 0
                },
                "precio": {
                    "type": "number",
                    "minimum": 0.0
                },
                "autores": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "generos": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            }
        },
        "handler.UpdateGenreRequest": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string",
                    "maxLength": 100
                },
                "descripcion": {
                    "type": "string",
                    "maxLength": 2000
                }
            }
        },
        "handler.UpdateLoanRequest": {
            "type": "object",
            "properties": {
                "fecha_prestamo": {
                    "type": "string",
                    "example": "2024-03-01"
                },
                "fecha_devolucion": {
                    "type": "string",
                    "example": "2024-03-15"
                },
                "estado": {
                    "type": "string",
                    "example": "devuelto",
                    "enum": [
                        "activo",
                        "devuelto",
                        "retrasado"
                    ]
                },
                "usuario_id": {
                    "type": "integer",
                    "minimum": 1
                },
                "libros_id": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    },
                    "minItems": 1
                }
            }
        },
        "handler.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "maxLength": 255
                },
                "nombre": {
                    "type": "string",
                    "maxLength": 100
                },
                "apellido": {
                    "type": "string",
                    "maxLength": 100
                },
                "fecha_nacimiento": {
                    "type": "string",
                    "example": "1990-05-17"
                },
                "dni": {
                    "type": "string",
                    "maxLength": 20
                },
                "pais": {
                    "type": "string",
                    "maxLength": 100
                },
                "ciudad": {
                    "type": "string",
                    "maxLength": 100
                },
                "direccion": {
                    "type": "string",
                    "maxLength": 255
                },
                "telefono": {
                    "type": "string",
                    "maxLength": 30
                },
                "password": {
                    "type": "string",
                    "minLength": 8,
                    "maxLength": 72
                }
            }
        },
        "handler.User": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "email": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                },
                "apellido": {
                    "type": "string"
                },
                "fecha_nacimiento": {
                    "type": "string",
                    "example": "1990-05-17"
                },
                "dni": {
                    "type": "string"
                },
                "pais": {
                    "type": "string"
                },
                "ciudad": {
                    "type": "string"
                },
                "direccion": {
                    "type": "string"
                },
                "telefono": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/handler.User"
                }
            }
        },
        "validation.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/validation.FieldError"
                    }
                }
            }
        },
        "validation.FieldError": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "rule": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Biblioteca API",
	Description:      "Catalog API for books, authors, genres, users and loans.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
